package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/database"
	grpcServer "terminal-terrace/conduit/internal/grpc"
	"terminal-terrace/conduit/internal/logging"
	"terminal-terrace/conduit/internal/route"
	"terminal-terrace/conduit/internal/telemetry"
)

// @title Conduit API
// @version 1.0
// @description Conduit 博客平台 API
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 加载配置
	conf := config.MustLoad("config/config.yaml")
	logging.Setup(conf.Log.Level, conf.Log.Format)

	// 2. 链路追踪
	tp, err := telemetry.Init(context.Background(), conf.Telemetry)
	if err != nil {
		logrus.WithError(err).Fatal("初始化链路追踪失败")
	}

	// 3. 初始化数据库
	store, err := database.Open(conf)
	if err != nil {
		logrus.WithError(err).Fatal("初始化数据库失败")
	}

	// 4. 设置路由
	r := route.SetupRouter(conf, store)
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(conf.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(conf.Server.WriteTimeout) * time.Second,
	}

	// 5. 启动服务
	go func() {
		logrus.WithField("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("HTTP server failed")
		}
	}()

	var gs *grpcServer.Server
	if conf.GRPC.Port != 0 {
		gs, err = grpcServer.NewServer(conf.GRPC.Port, store)
		if err != nil {
			logrus.WithError(err).Fatal("初始化 gRPC 服务失败")
		}
		go func() {
			logrus.WithField("addr", gs.GetAddr()).Info("gRPC health server listening")
			if err := gs.Start(); err != nil {
				logrus.WithError(err).Error("gRPC server stopped")
			}
		}()
	}

	// 6. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if gs != nil {
		gs.Stop()
	}
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown failed")
	}
	if err := store.Close(); err != nil {
		logrus.WithError(err).Error("关闭数据库失败")
	}
	if err := tp.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("关闭链路追踪失败")
	}
}
