package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pedidos/internal/metrics"
	"pedidos/internal/model"
)

var errMissingRemoteID = errors.New("response without id")

// FabricationClient submits orders to the bancada fabrication queue.
type FabricationClient struct {
	baseURL       string
	callbackURL   string
	stockPosition int
	client        *http.Client
	metrics       *metrics.Metrics
}

func NewFabricationClient(baseURL, callbackBaseURL string, stockPosition int, timeout time.Duration, m *metrics.Metrics) *FabricationClient {
	return &FabricationClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		callbackURL:   strings.TrimRight(callbackBaseURL, "/"),
		stockPosition: stockPosition,
		client:        &http.Client{Timeout: timeout},
		metrics:       m,
	}
}

type queueItemPayload struct {
	OrderID  int64       `json:"orderId"`
	SKU      string      `json:"sku"`
	Color    int         `json:"cor"`
	Quantity int         `json:"quantidade"`
	Block    model.Block `json:"bloco"`
}

type QueueItemRequest struct {
	Payload       queueItemPayload `json:"payload"`
	CallbackURL   string           `json:"callbackUrl"`
	StockPosition int              `json:"estoquePos"`
}

type queueItemResponse struct {
	ID json.RawMessage `json:"id"`
}

// CallbackURL is where the bancada reports progress for an order.
func (c *FabricationClient) CallbackURL(orderID int64) string {
	return fmt.Sprintf("%s/pedidos/%d/status", c.callbackURL, orderID)
}

func (c *FabricationClient) buildRequest(order model.Order, product model.Product) (QueueItemRequest, error) {
	block, err := product.Block()
	if err != nil {
		return QueueItemRequest{}, err
	}
	return QueueItemRequest{
		Payload: queueItemPayload{
			OrderID:  order.ID,
			SKU:      block.SKU(),
			Color:    block.Color,
			Quantity: order.Quantity,
			Block:    block,
		},
		CallbackURL:   c.CallbackURL(order.ID),
		StockPosition: c.stockPosition,
	}, nil
}

// Dispatch posts the order to the queue and returns the remote job id. It
// never retries; every failure comes back as *DispatchError.
func (c *FabricationClient) Dispatch(ctx context.Context, order model.Order, product model.Product) (string, error) {
	start := time.Now()
	remoteID, err := c.dispatch(ctx, order, product)
	c.metrics.ObserveDispatch(err == nil, time.Since(start))
	if err != nil {
		return "", &DispatchError{OrderID: order.ID, Err: err}
	}
	return remoteID, nil
}

func (c *FabricationClient) dispatch(ctx context.Context, order model.Order, product model.Product) (string, error) {
	if order.ID <= 0 {
		return "", fmt.Errorf("order has no id")
	}

	body, err := c.buildRequest(order, product)
	if err != nil {
		return "", fmt.Errorf("build payload: %w", err)
	}
	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	url := c.baseURL + "/queue/items"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("unexpected status: %d, body: %s", resp.StatusCode, string(b))
	}

	var res queueItemResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return parseRemoteID(res.ID)
}

// parseRemoteID accepts the id either as a JSON string or a JSON number.
func parseRemoteID(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", errMissingRemoteID
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", errMissingRemoteID
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := strconv.ParseFloat(n.String(), 64); err == nil {
			return n.String(), nil
		}
	}

	return "", fmt.Errorf("unsupported id %s", string(raw))
}
