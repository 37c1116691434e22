package database

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS usuarios (
    id UUID PRIMARY KEY,
    nome TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    telefone TEXT NOT NULL,
    senha BYTEA NOT NULL,
    tipo_usuario TEXT NOT NULL DEFAULT 'usuario',
    criado_em TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS produtos (
    id BIGSERIAL PRIMARY KEY,
    nome TEXT NOT NULL,
    preco NUMERIC(12,2) NOT NULL,
    descricao TEXT NOT NULL,
    imagem TEXT NOT NULL,
    tamanho TEXT NOT NULL,
    rotulo TEXT NOT NULL,
    tipo_embalagem TEXT NOT NULL,
    cor_tampa TEXT NOT NULL,
    acabamento_superficie TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pedidos (
    id BIGSERIAL PRIMARY KEY,
    codigo_pedido TEXT NOT NULL UNIQUE,
    gestor_id UUID NOT NULL REFERENCES usuarios(id),
    produto_id BIGINT NOT NULL REFERENCES produtos(id),
    quantidade INTEGER NOT NULL CHECK (quantidade > 0),
    status TEXT NOT NULL,
    id_fabricacao TEXT,
    data_criacao TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_pedidos_gestor_id ON pedidos(gestor_id);
CREATE INDEX IF NOT EXISTS idx_pedidos_pendentes ON pedidos(data_criacao) WHERE id_fabricacao IS NULL;
`

func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}
