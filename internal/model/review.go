package model

// Review 商品评价，评分汇总任务按商品聚合后回填 products.rating / review_count
type Review struct {
	BaseModel
	StoreID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index;not null"`

	Rating  int    `gorm:"not null"` // 1-5
	Title   string `gorm:"size:255"`
	Content string `gorm:"type:text"`
	Author  string `gorm:"size:100"`
}

func (Review) TableName() string {
	return "reviews"
}
