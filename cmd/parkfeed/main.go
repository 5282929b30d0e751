/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-16 18:20:14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-18 11:30:02
 * @FilePath: \go-parkfeed\cmd\parkfeed\main.go
 * @Description: 停车场看板程序入口
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	wscconfig "github.com/kamalyes/go-config/pkg/wsc"
	parkfeed "github.com/kamalyes/go-parkfeed"
	"github.com/kamalyes/go-parkfeed/client"
	"github.com/kamalyes/go-parkfeed/config"
	"github.com/kamalyes/go-parkfeed/render"
	"github.com/kamalyes/go-parkfeed/video"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "./config/parkfeed.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration from %s: %v\n", path, err)
		os.Exit(1)
	}

	wscCfg := wscconfig.Default()
	if wscCfg.Logging != nil {
		wscCfg.Logging.Enabled = true
		wscCfg.Logging.Level = cfg.Log.Level
	}
	log := client.NewLogger(wscCfg)

	endpoint, err := cfg.ResolveEndpoint()
	if err != nil {
		log.ErrorKV("无法确定推送地址", "error", err)
		os.Exit(1)
	}

	renderers := []render.Renderer{render.NewConsoleBoard(os.Stdout)}
	var redisBoard *render.RedisBoard
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		redisBoard = render.NewRedisBoard(rdb, cfg.RedisBoardConfig(), log)
		defer redisBoard.Close()
		renderers = append(renderers, redisBoard)
	}

	feed := client.New(endpoint)
	feed.SetLogger(log)
	feed.SetConfig(cfg.ClientConfig())
	feed.SetRenderer(render.Multi(renderers...))
	feed.OnGiveUp(func(err error) {
		log.ErrorKV("推送连接已放弃重连", "error", err)
	})

	var camera *video.Camera
	if cfg.Camera.Enabled {
		camera = video.NewCamera(
			video.NewDeviceSource(cfg.Camera.Device),
			&video.LogSurface{Logger: log},
			video.NotifierFunc(func(message string) {
				fmt.Fprintln(os.Stderr, message)
			}),
			log,
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kiosk := parkfeed.NewKiosk(feed, camera, log)
	if err := kiosk.Mount(ctx); err != nil {
		log.ErrorKV("看板启动失败", "endpoint", endpoint, "error", err)
		os.Exit(1)
	}
	log.InfoKV("看板已启动", "endpoint", endpoint, "config", path)

	<-ctx.Done()
	log.Info("收到退出信号，正在关闭看板")
	if err := kiosk.Unmount(); err != nil {
		log.WarnKV("关闭看板时出错", "error", err)
	}
}
