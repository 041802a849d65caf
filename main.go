package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/auditlog"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/chunker"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/config"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/extractor"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/generator"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/publisher"
	"github.com/Lishiqi1024/WeChat-Article-Layout-Tool/server"
)

func main() {
	addr := flag.String("addr", "", "http listen address (overrides SERVER_ADDR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Model:   cfg.ModelName,
		APIKey:  cfg.ModelAPIKey,
		BaseURL: cfg.ModelBaseURL,
	})
	if err != nil {
		logger.Fatal("llm client init failed", zap.Error(err))
	}

	formatter, err := generator.NewFormatter(llm, chunker.New(cfg.ChunkMaxLength))
	if err != nil {
		logger.Fatal("formatter init failed", zap.Error(err))
	}
	agent, err := generator.NewAgent(llm)
	if err != nil {
		logger.Fatal("agent init failed", zap.Error(err))
	}

	pub, err := publisher.New(publisher.Config{
		AppID:               cfg.WeChatAppID,
		AppSecret:           cfg.WeChatAppSecret,
		DefaultThumbMediaID: cfg.DefaultThumbMediaID,
		MaxContentLen:       cfg.MaxContentLength,
	}, nil, logger)
	if err != nil {
		logger.Fatal("publisher init failed", zap.Error(err))
	}

	extract := extractor.New(cfg.AllowedExtensions, cfg.MaxUploadBytes, logger)
	audit := auditlog.New(cfg.AuditLogPath, logger)

	srv, err := server.New(formatter, agent, extract, pub, audit, logger, cfg.MaxUploadBytes)
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}

	listen := cfg.ListenAddr
	if *addr != "" {
		listen = *addr
	}
	logger.Info("starting server", zap.String("addr", listen))
	if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
