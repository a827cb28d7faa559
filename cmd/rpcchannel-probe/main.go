// Package main 提供 rpcchannel-probe 命令行入口
//
// 对给定目标构造一条安全通道并观察其状态变化，
// 用于排查解析、握手与凭证配置问题。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	rpcchannel "github.com/dep2p/go-rpcchannel"
	"github.com/dep2p/go-rpcchannel/pkg/interfaces"
	"github.com/dep2p/go-rpcchannel/pkg/lib/log"
	"github.com/dep2p/go-rpcchannel/pkg/types"
)

var logger = log.Logger("rpcchannel/cmd")

// ═══════════════════════════════════════════════════════════════════════════
// 命令行参数
// ═══════════════════════════════════════════════════════════════════════════
var (
	target      = flag.String("target", "", "通道目标（如 dns:///example.com:443）")
	insecure    = flag.Bool("insecure", false, "使用明文凭证（默认 TLS）")
	serverName  = flag.String("server-name", "", "覆盖 TLS 握手服务器名")
	dialTimeout = flag.Duration("dial-timeout", 20*time.Second, "传输拨号超时")
	dnsRefresh  = flag.Duration("dns-refresh", 30*time.Minute, "dns 周期刷新间隔")
	watch       = flag.Duration("watch", 10*time.Second, "状态观察时长")
	verbose     = flag.Bool("verbose", false, "输出调试日志")
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Parse()
	if *target == "" {
		flag.Usage()
		return fmt.Errorf("missing required -target")
	}
	if *verbose {
		log.SetLevel(log.LevelDebug)
	}

	b, err := rpcchannel.New(
		rpcchannel.WithDialTimeout(*dialTimeout),
		rpcchannel.WithDNSRefreshInterval(*dnsRefresh),
	)
	if err != nil {
		return err
	}
	defer b.Close()

	creds := buildCredentials()
	ch := b.CreateSecureChannel(creds, *target, types.NewArgs())
	if ch == nil {
		return fmt.Errorf("resolver could not be created for %q", *target)
	}
	defer ch.Close()

	fmt.Printf("channel %s -> %s\n", ch.ID(), ch.Target())
	watchStates(ch)

	stats := b.Stats()
	fmt.Printf("stats: live=%d lame=%d resolver_failed=%d subchannels=%d\n",
		stats.LiveChannels, stats.LameChannels, stats.ResolverFailed, stats.SubchannelsMade)
	return nil
}

// buildCredentials 按参数组装通道凭证
func buildCredentials() interfaces.Credentials {
	if *insecure {
		return rpcchannel.NewInsecureCredentials()
	}
	if *serverName != "" {
		return rpcchannel.NewTLSCredentialsWithServerName(nil, *serverName)
	}
	return rpcchannel.NewTLSCredentials(nil)
}

// watchStates 轮询通道状态直到观察时长结束或收到退出信号
func watchStates(ch interfaces.Channel) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelWatch := context.WithTimeout(ctx, *watch)
	defer cancelWatch()

	last := types.ConnectivityState(-1)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s := ch.State(); s != last {
			fmt.Printf("state: %s\n", s)
			last = s
			if s == types.StateReady {
				logger.Info("通道就绪", "target", ch.Target())
				return
			}
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
