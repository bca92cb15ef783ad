package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/backoffice/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 2. 开发环境开启SQL日志，生产环境关闭
// 3. 关闭GORM的默认单语句事务，多语句操作统一由TxManager开启事务
// 4. 可选自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.Warn("关闭数据库连接失败", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// AutoMigrate 自动迁移表结构
// 注意：生产环境应使用版本化的迁移脚本
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ProductModel{},
		&SizeModel{},
		&ColorModel{},
		&VariantModel{},
		&OrderModel{},
		&OrderLineModel{},
		&CartLineModel{},
		&DiscountCodeModel{},
		&NotificationModel{},
		&CheckoutNotificationModel{},
	)
}

// =========================================
// 商品目录（由目录服务维护，这里只读 + 扣减库存）
// =========================================

// ProductModel 商品
type ProductModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:200;not null;comment:商品名称"`
	Price     int64     `gorm:"not null;default:0;comment:标价"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// SizeModel 尺码
type SizeModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:20;not null;comment:尺码"`
}

// TableName 指定表名
func (SizeModel) TableName() string {
	return "sizes"
}

// ColorModel 颜色
type ColorModel struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:30;not null;comment:颜色"`
}

// TableName 指定表名
func (ColorModel) TableName() string {
	return "colors"
}

// VariantModel 商品规格（商品 × 尺码 × 颜色）
type VariantModel struct {
	ID        uint      `gorm:"primaryKey"`
	ProductID uint      `gorm:"uniqueIndex:idx_variant_sku;not null;comment:商品ID"`
	SizeID    uint      `gorm:"uniqueIndex:idx_variant_sku;not null;comment:尺码ID"`
	ColorID   uint      `gorm:"uniqueIndex:idx_variant_sku;not null;comment:颜色ID"`
	Stock     int       `gorm:"not null;default:0;comment:库存数量"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (VariantModel) TableName() string {
	return "variants"
}

// =========================================
// 订单
// =========================================

// OrderModel 订单
// Status: 0待确认 1已确认 2已取消
type OrderModel struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"index;size:64;not null;comment:下单用户"`
	Note         string    `gorm:"size:500;comment:备注"`
	Region       string    `gorm:"size:100;comment:省/市"`
	District     string    `gorm:"size:100;comment:区/县"`
	Ward         string    `gorm:"size:100;comment:街道/乡镇"`
	Street       string    `gorm:"size:255;comment:详细地址"`
	DiscountCode string    `gorm:"size:16;comment:优惠码"`
	Discount     int64     `gorm:"not null;default:0;comment:优惠金额"`
	Total        int64     `gorm:"not null;comment:实付金额"`
	Status       int       `gorm:"index;type:tinyint;not null;default:0;comment:订单状态(0待确认1已确认2已取消)"`
	CreatedAt    time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt    time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderLineModel 订单明细（下单时的快照）
type OrderLineModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null;comment:订单ID"`
	VariantID uint   `gorm:"index;not null;comment:规格ID"`
	Quantity  int    `gorm:"not null;comment:数量"`
	UnitPrice int64  `gorm:"not null;comment:下单时单价"`
	LineTotal int64  `gorm:"not null;comment:小计"`
	Color     string `gorm:"size:30;comment:颜色"`
	Size      string `gorm:"size:20;comment:尺码"`
}

// TableName 指定表名
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// =========================================
// 购物车
// =========================================

// CartLineModel 购物车明细
// 唯一索引保证同一用户的(规格, 颜色, 尺码)只有一行
type CartLineModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    string    `gorm:"uniqueIndex:idx_cart_key;size:64;not null;comment:用户"`
	VariantID uint      `gorm:"uniqueIndex:idx_cart_key;not null;comment:规格ID"`
	Color     string    `gorm:"uniqueIndex:idx_cart_key;size:30;not null;default:'';comment:颜色"`
	Size      string    `gorm:"uniqueIndex:idx_cart_key;size:20;not null;default:'';comment:尺码"`
	Quantity  int       `gorm:"not null;comment:数量"`
	UnitPrice int64     `gorm:"not null;comment:加入时单价"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// =========================================
// 优惠码与通知
// =========================================

// DiscountCodeModel 优惠码
type DiscountCodeModel struct {
	ID        uint      `gorm:"primaryKey"`
	Code      string    `gorm:"uniqueIndex;size:16;not null;comment:优惠码"`
	Amount    int64     `gorm:"not null;comment:优惠金额"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}

// NotificationModel 通用通知
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	Subject   string    `gorm:"size:200;not null;comment:主题"`
	Kind      string    `gorm:"size:10;not null;comment:类型(Add/Edit/Delete)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}

// CheckoutNotificationModel 新订单通知
type CheckoutNotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null;comment:订单ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CheckoutNotificationModel) TableName() string {
	return "checkout_notifications"
}
