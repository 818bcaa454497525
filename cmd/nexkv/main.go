package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	logconfig "github.com/nexachain/v1/internal/config/log"
	database "github.com/nexachain/v1/internal/config/storage/database"
	corelog "github.com/nexachain/v1/internal/core/infrastructure/log"
	"github.com/nexachain/v1/internal/core/infrastructure/storage"
	"github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// NEX存储服务入口
// 通过DI容器装配日志和存储模块，数据库句柄由生命周期钩子统一关闭
func main() {
	dbType := flag.String("type", "badgerdb", "存储引擎")
	dbName := flag.String("name", "nexkv", "数据库逻辑名称")
	dbPath := flag.String("path", "./data/nexkv", "数据库路径")
	logLevel := flag.String("log-level", "info", "日志级别")
	logFile := flag.String("log-file", "", "日志文件路径（留空仅输出到控制台）")
	enableCache := flag.Bool("cache", false, "启用堆缓存")
	enableLocking := flag.Bool("lock", true, "启用锁装饰器")
	flag.Parse()

	app := fx.New(
		fx.Provide(func() (log.Logger, error) {
			return corelog.New(logconfig.New(&logconfig.LogOptions{
				Level:     *logLevel,
				ToConsole: true,
				FilePath:  *logFile,
			}))
		}),
		fx.Provide(func() database.Properties {
			return database.Properties{
				database.PropDBType:          *dbType,
				database.PropDBName:          *dbName,
				database.PropDBPath:          *dbPath,
				database.PropEnableHeapCache: fmt.Sprintf("%v", *enableCache),
				database.PropEnableLocking:   fmt.Sprintf("%v", *enableLocking),
			}
		}),
		storage.Module(),
		fx.Invoke(func(db storageInterface.Database, logger log.Logger) error {
			empty, err := db.IsEmpty(context.Background())
			if err != nil {
				return fmt.Errorf("数据库状态检查失败: %w", err)
			}
			logger.Infof("🚀 存储服务就绪: %s (engine=%s, empty=%v)", db.Name(), *dbType, empty)
			return nil
		}),
		fx.WithLogger(func(logger log.Logger) fxevent.Logger {
			if zl := logger.GetZapLogger(); zl != nil {
				return &fxevent.ZapLogger{Logger: zl}
			}
			return fxevent.NopLogger
		}),
	)

	app.Run()
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "存储服务启动失败: %v\n", err)
		os.Exit(1)
	}
}
