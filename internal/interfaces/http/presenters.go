package http

import (
	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/domain/entity"
	"github.com/jhoicas/lm-inventario/internal/domain/inventory"
)

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Reason:         m.Reason,
		Observations:   m.Observations,
		UserID:         m.ActorID,
		UserName:       m.ActorName,
		Date:           m.Date,
		StockAnterior:  m.StockBefore,
		StockNuevo:     m.StockAfter,
		ProductInfo:    dto.ProductInfoDTO{Nombre: m.ProductSnapshot.Name, SKU: m.ProductSnapshot.SKU},
		IdempotencyKey: m.IdempotencyKey,
	}
}

func toMovementList(list []*entity.Movement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toVerificationResponse(productID string, r *inventory.ReplayReport) dto.LedgerVerificationResponse {
	out := dto.LedgerVerificationResponse{
		ProductID:     productID,
		Consistent:    r.Consistent(),
		Movements:     r.Movements,
		InitialStock:  r.InitialStock,
		ComputedStock: r.ComputedStock,
		CurrentStock:  r.CurrentStock,
		Discrepancies: make([]dto.DiscrepancyDTO, 0, len(r.Discrepancies)),
	}
	for _, d := range r.Discrepancies {
		out.Discrepancies = append(out.Discrepancies, dto.DiscrepancyDTO{
			MovementID: d.MovementID, Field: d.Field, Expected: d.Expected, Stored: d.Stored,
		})
	}
	return out
}

func toNotificationList(list []*entity.Notification) []dto.NotificationResponse {
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NotificationResponse{
			ID: n.ID, Message: n.Message, Type: n.Kind, Link: n.Link, Read: n.Read, CreatedAt: n.CreatedAt,
		})
	}
	return out
}

func toActivityList(list []*entity.ActivityLog) []dto.ActivityLogResponse {
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.ActivityLogResponse{
			ID: e.ID, Actor: e.Actor, Action: e.Action, Details: e.Details, Timestamp: e.Timestamp,
		})
	}
	return out
}
