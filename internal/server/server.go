package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/packagewjx/energy-anomaly/internal/anomaly"
	"github.com/packagewjx/energy-anomaly/internal/classify"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	DefaultPort            = 5000
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMysqlUser       = "root"
	DefaultMysqlDatabase   = "energy"
)

const maxRequestBodySize = 1 << 20

type ServerConfig struct {
	Port            uint16        // 本服务器监听端口
	ModelFile       string        // 模型文件路径，仅用于日志
	ModelFormat     string        // 模型文件格式，仅用于日志
	CorsOrigins     []string      // 允许跨域的来源，为空时允许全部
	ShutdownTimeout time.Duration // 优雅关闭的最长等待时间
	Mysql           MysqlConfig   // Host为空时不提供充电桩接口
}

func (s ServerConfig) String() string {
	copied := s
	copied.Mysql.Password = ""
	marshal, _ := json.Marshal(copied)
	return string(marshal)
}

func (config *ServerConfig) Complete() error {
	if config.Port < 1024 {
		return fmt.Errorf("端口号应该在1024到65535之间，现在为%d", config.Port)
	}

	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultShutdownTimeout
	}

	if len(config.CorsOrigins) == 0 {
		config.CorsOrigins = []string{"*"}
	}

	if config.Mysql.Host == "" && os.Getenv("MYSQL_SERVICE_HOST") != "" {
		config.Mysql.Host = fmt.Sprintf("%s:%s",
			os.Getenv("MYSQL_SERVICE_HOST"), os.Getenv("MYSQL_SERVICE_PORT"))
	}
	if config.Mysql.User == "" {
		config.Mysql.User = DefaultMysqlUser
	}
	if config.Mysql.Database == "" {
		config.Mysql.Database = DefaultMysqlDatabase
	}

	return nil
}

type Server interface {
	Start() error
}

// NewServer 创建服务器。model必须已经加载完成，服务期间不会替换。
func NewServer(config *ServerConfig, model classify.Model, logger *zap.Logger) (Server, error) {
	if model == nil {
		return nil, fmt.Errorf("模型不能为空")
	}
	if err := config.Complete(); err != nil {
		return nil, err
	}

	var dao Dao
	if config.Mysql.Host != "" {
		var err error
		dao, err = NewDao(config.Mysql, logger)
		if err != nil {
			return nil, err
		}
	}

	return newServerImpl(config, model, dao, logger), nil
}

func newServerImpl(config *ServerConfig, model classify.Model, dao Dao, logger *zap.Logger) *serverImpl {
	return &serverImpl{
		config:   config,
		assessor: anomaly.NewAssessor(model),
		dao:      dao,
		logger:   logger.Named("server"),
		metrics:  newServerMetrics(),
		now:      time.Now,
	}
}

type serverImpl struct {
	config   *ServerConfig
	assessor *anomaly.Assessor
	dao      Dao // 可能为nil
	logger   *zap.Logger
	metrics  *serverMetrics
	now      func() time.Time
}

func (s *serverImpl) Start() error {
	s.logger.Info("服务器启动", zap.Stringer("config", s.config))

	server := s.buildServer()
	errCh := make(chan error, 1)
	go s.serve(server, errCh)

	// 注册信号接收器
	termSigChan := make(chan os.Signal, 1)
	signal.Notify(termSigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(termSigChan)

	select {
	case sig := <-termSigChan:
		s.logger.Info("收到退出信号", zap.String("signal", sig.String()))
	case err := <-errCh:
		return errors.Wrap(err, "HTTP服务器异常退出")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "关闭HTTP服务器失败")
	}

	// 等待HTTP服务器结束
	if err := <-errCh; err != nil {
		return errors.Wrap(err, "HTTP关闭出现错误")
	}

	return nil
}

func (s *serverImpl) buildHandler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestId, s.instrument)

	router.HandleFunc("/anomaly/predict", s.handlePredict).Methods(http.MethodPost)

	if s.dao != nil {
		router.HandleFunc("/ports", s.handlePorts).Methods(http.MethodGet)
	}

	router.HandleFunc("/healthz", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.config.CorsOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", requestIdHeader}),
	)

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.logger}),
	)(cors(router))
}

func (s *serverImpl) buildServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.buildHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *serverImpl) serve(server *http.Server, errCh chan<- error) {
	s.logger.Info("API服务器启动", zap.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		errCh <- err
		return
	}

	s.logger.Info("API服务器结束")
	errCh <- nil
}
