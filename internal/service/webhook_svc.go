package service

import (
	"context"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookService 商品变更事件通知
// 外部系统 (边缘缓存、搜索索引等) 订阅店铺配置的回调地址；
// 通知尽力而为，失败只记日志，绝不影响主流程
type WebhookService struct {
	client *resty.Client
}

// ProductEvent 商品变更事件载荷
type ProductEvent struct {
	Event      string `json:"event"` // product.created / product.updated / product.deleted
	StoreID    int64  `json:"store_id"`
	ProductID  int64  `json:"product_id"`
	OccurredAt string `json:"occurred_at"`
}

// NewWebhookService 创建通知服务
func NewWebhookService() *WebhookService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetHeader("User-Agent", "Storefront-Go-App/1.0").
		SetHeader("Content-Type", "application/json")

	return &WebhookService{client: client}
}

// NotifyProductChange 发送商品变更事件
func (s *WebhookService) NotifyProductChange(ctx context.Context, endpoint, event string, storeID, productID int64) {
	payload := ProductEvent{
		Event:      event,
		StoreID:    storeID,
		ProductID:  productID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(endpoint)

	if err != nil {
		log.Printf("[Webhook] 事件发送失败 %s store=%d product=%d: %v", event, storeID, productID, err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[Webhook] 事件被拒绝 %s store=%d product=%d: HTTP %d", event, storeID, productID, resp.StatusCode())
	}
}
