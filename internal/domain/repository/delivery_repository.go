package repository

import (
	"context"

	"github.com/Chrisx-39/FormMaster/internal/domain/entity"
)

// TransportRepository persiste solicitudes de transporte.
type TransportRepository interface {
	Create(ctx context.Context, tr *entity.TransportRequest) error
	GetByID(ctx context.Context, id string) (*entity.TransportRequest, error)
	Update(ctx context.Context, tr *entity.TransportRequest) error
	List(ctx context.Context, f ListFilter) ([]*entity.TransportRequest, error)
}

// DeliveryRepository persiste entregas, notas de entrega y GRV.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*entity.Delivery, error)
	Update(ctx context.Context, d *entity.Delivery) error
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Delivery, error)

	CreateNote(ctx context.Context, n *entity.DeliveryNote) error
	GetNoteByDelivery(ctx context.Context, deliveryID string) (*entity.DeliveryNote, error)
	UpdateNote(ctx context.Context, n *entity.DeliveryNote) error

	CreateGRV(ctx context.Context, g *entity.GoodsReceivedVoucher) error
	GetGRV(ctx context.Context, id string) (*entity.GoodsReceivedVoucher, error)
	ListGRVByOrder(ctx context.Context, orderID string) ([]*entity.GoodsReceivedVoucher, error)
}
