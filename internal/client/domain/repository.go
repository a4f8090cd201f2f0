package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound    = errors.New("client_not_found")
	ErrInvalidName = errors.New("invalid_client_name")
	ErrInvalidID   = errors.New("invalid_client_id")
)

type Repository interface {
	Insert(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id snowflake.ID) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
