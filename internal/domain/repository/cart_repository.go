package repository

import "context"

// CartSnapshotRepository guarda la instantánea serializada del carrito por clave de cliente.
// Se trabaja con bytes crudos: el dominio decide si el contenido es válido al rehidratar.
type CartSnapshotRepository interface {
	// Load devuelve (nil, nil) si no hay instantánea para la clave.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, snapshot []byte) error
	Delete(ctx context.Context, key string) error
}
