package model

// Store 租户店铺 (多租户隔离核心)
type Store struct {
	BaseModel
	Name     string `gorm:"size:100;not null"`
	Slug     string `gorm:"size:100;uniqueIndex;not null"` // 子域名/路径标识
	Domain   string `gorm:"size:255"`                      // 自定义域名 (可选)
	Currency string `gorm:"size:5;default:USD"`
	IsActive bool   `gorm:"default:true;index"`

	// 商品变更时通知外部系统 (边缘缓存清理等)，为空则不通知
	WebhookURL string `gorm:"size:512"`
}

func (Store) TableName() string {
	return "stores"
}
