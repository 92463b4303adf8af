package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/warehouse/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明:
// 1. driver=mysql 用于生产环境,driver=sqlite 用于本地演示和测试
// 2. 配置连接池参数(MaxOpenConns、MaxIdleConns、ConnMaxLifetime)
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构(AutoMigrate)
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 2. 按驱动连接数据库
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = OpenSQLite(cfg.Database.SQLitePath, logLevel)
	default:
		db, err = gorm.Open(mysql.Open(cfg.Database.DSN()), gormConfig(logLevel))
	}
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	if cfg.Database.Driver != "sqlite" {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	// 4. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	zap.L().Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

	// 5. 自动迁移表结构
	// 注意:生产环境应使用专门的迁移工具(如golang-migrate)
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// OpenSQLite 打开SQLite数据库
// 教学要点:
// 1. SQLite是单写者数据库,连接数限制为1,所有写操作天然串行
// 2. 因此事务内的查询必须使用事务连接(dbFrom),否则会等待自己持有的连接而卡死
// 3. path为":memory:"时每个连接是独立的内存库,单连接保证整个进程看到同一个库
func OpenSQLite(path string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(logLevel))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func gormConfig(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
		// 关联只用于Preload展示名称,约束由业务层保证
		DisableForeignKeyConstraintWhenMigrating: true,
		// 把驱动的唯一键冲突统一翻译成gorm.ErrDuplicatedKey
		TranslateError: true,
	}
}

// Migrate 自动迁移表结构
// 学习要点:
// 1. AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
// 2. 这里迁移的是GORM模型(带tag),不是domain层的实体
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CategoryModel{},
		&ProductModel{},
		&RackModel{},
		&BatchModel{},
		&PlacementModel{},
		&JournalModel{},
	)
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:100;not null;comment:分类名称"`
	Description string    `gorm:"type:text;comment:分类描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel GORM商品模型
// 设计说明:
// 1. SKU有唯一索引,防止重复
// 2. 尺寸单位cm,重量单位kg
type ProductModel struct {
	ID         uint          `gorm:"primaryKey"`
	Name       string        `gorm:"index;size:200;not null;comment:商品名称"`
	SKU        string        `gorm:"column:sku;uniqueIndex;size:64;not null;comment:SKU"`
	CategoryID uint          `gorm:"index;not null;comment:分类ID"`
	Category   CategoryModel `gorm:"foreignKey:CategoryID"`
	Length     float64       `gorm:"not null;comment:长(cm)"`
	Width      float64       `gorm:"not null;comment:宽(cm)"`
	Height     float64       `gorm:"not null;comment:高(cm)"`
	Weight     float64       `gorm:"not null;comment:重量(kg)"`
	ImageURL   string        `gorm:"size:500;comment:图片URL"`
	CreatedAt  time.Time     `gorm:"index;comment:创建时间"`
	UpdatedAt  time.Time     `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// RackModel GORM货架模型
// 注意:IsActive不加default标签,否则GORM创建时会忽略false零值
type RackModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:货架名称"`
	Length    float64   `gorm:"not null;comment:长(cm)"`
	Width     float64   `gorm:"not null;comment:宽(cm)"`
	Height    float64   `gorm:"not null;comment:高(cm)"`
	MaxLoad   float64   `gorm:"not null;comment:最大承重(kg)"`
	IsActive  bool      `gorm:"index;not null;comment:是否启用"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (RackModel) TableName() string {
	return "racks"
}

// BatchModel GORM批次模型
// 剩余数量不落库,全部由placements/journal聚合得出
type BatchModel struct {
	ID          uint         `gorm:"primaryKey"`
	ProductID   uint         `gorm:"index;not null;comment:商品ID"`
	Product     ProductModel `gorm:"foreignKey:ProductID"`
	Quantity    int          `gorm:"not null;comment:到货数量"`
	ArrivalDate time.Time    `gorm:"index;not null;comment:到货时间"`
	Supplier    string       `gorm:"size:200;not null;comment:供应商"`
	Notes       string       `gorm:"type:text;comment:备注"`
}

// TableName 指定表名
func (BatchModel) TableName() string {
	return "batches"
}

// PlacementModel GORM上架记录模型
// 教学要点:
// 1. idx_fifo复合索引覆盖出库查询: WHERE product_id=? AND is_active ORDER BY date_placed, id
// 2. InitialQuantity创建后不再修改,批次"已上架总量"基于它汇总
type PlacementModel struct {
	ID              uint         `gorm:"primaryKey"`
	RackID          uint         `gorm:"index;not null;comment:货架ID"`
	Rack            RackModel    `gorm:"foreignKey:RackID"`
	ProductID       uint         `gorm:"index:idx_fifo,priority:1;not null;comment:商品ID"`
	Product         ProductModel `gorm:"foreignKey:ProductID"`
	BatchID         *uint        `gorm:"index;comment:批次ID"`
	Quantity        int          `gorm:"not null;comment:当前数量"`
	InitialQuantity int          `gorm:"not null;comment:上架时数量"`
	IsActive        bool         `gorm:"index:idx_fifo,priority:2;not null;comment:是否有效"`
	DatePlaced      time.Time    `gorm:"index:idx_fifo,priority:3;not null;comment:上架时间"`
}

// TableName 指定表名
func (PlacementModel) TableName() string {
	return "placements"
}

// JournalModel GORM仓库日志模型(只追加)
type JournalModel struct {
	ID            uint         `gorm:"primaryKey"`
	OperationType string       `gorm:"index;size:3;not null;comment:操作类型(IN/OUT)"`
	ProductID     uint         `gorm:"index;not null;comment:商品ID"`
	Product       ProductModel `gorm:"foreignKey:ProductID"`
	Quantity      int          `gorm:"not null;comment:数量"`
	RackID        *uint        `gorm:"index;comment:货架ID"`
	Rack          *RackModel   `gorm:"foreignKey:RackID"`
	BatchID       *uint        `gorm:"index;comment:批次ID"`
	OperationDate time.Time    `gorm:"index;not null;comment:操作时间"`
	Operator      string       `gorm:"size:100;not null;comment:操作员"`
	Notes         string       `gorm:"type:text;comment:备注"`
}

// TableName 指定表名
func (JournalModel) TableName() string {
	return "warehouse_journal"
}
