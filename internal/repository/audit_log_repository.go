package repository

import (
	"context"

	"orderhub/internal/domain/model"
)

// 監査ログの保存・履歴取得
type AuditLogRepository interface {
	//監査ログを1件保存
	Create(ctx context.Context, log model.AuditLog) error

	//対象（注文など）ごとの履歴を古い順に返す
	ListByResource(ctx context.Context, resourceType model.AuditResourceType, resourceID string) ([]model.AuditLog, error)
}
