package server

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/packagewjx/energy-anomaly/internal/ports"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 充电桩数据只读访问。数据由充电桩上报服务写入。
type Dao interface {
	QueryAllPortReports(ctx context.Context) ([]*ports.PortReport, error)
}

type daoImpl struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ Dao = &daoImpl{}

type MysqlConfig struct {
	Host     string // host:port
	User     string
	Password string
	Database string
	// 为true时启动时自动建表。数据库归上报服务所有，默认不执行任何DDL
	AutoMigrate bool
}

func (c MysqlConfig) dsn() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Database)
}

func NewDao(config MysqlConfig, zapLogger *zap.Logger) (Dao, error) {
	db, err := gorm.Open(mysql.Open(config.dsn()), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "", 0), logger.Config{
			LogLevel: logger.Silent,
		}),
	})
	if err != nil {
		return nil, errors.Wrap(err, "连接数据库错误")
	}

	if config.AutoMigrate {
		zapLogger.Info("正在创建充电桩数据表")
		err = db.AutoMigrate(&PortReportDO{}, &VehicleChargeDO{})
		if err != nil {
			return nil, errors.Wrap(err, "创建表格时出现异常")
		}
	}

	return &daoImpl{
		db:     db,
		logger: zapLogger.Named("dao"),
	}, nil
}

func (d *daoImpl) QueryAllPortReports(ctx context.Context) ([]*ports.PortReport, error) {
	doArray := []*PortReportDO{}
	err := d.db.WithContext(ctx).Preload("VehicleCharges").Find(&doArray).Error
	if err != nil {
		return nil, errors.Wrap(err, "查询充电桩数据出错")
	}

	d.logger.Debug("查询充电桩数据完成", zap.Int("count", len(doArray)))

	result := make([]*ports.PortReport, len(doArray))
	for i, do := range doArray {
		result[i] = do.toPortReport()
	}
	return result, nil
}
