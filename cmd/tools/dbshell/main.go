package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	logconfig "github.com/nexachain/v1/internal/config/log"
	database "github.com/nexachain/v1/internal/config/storage/database"
	corelog "github.com/nexachain/v1/internal/core/infrastructure/log"
	"github.com/nexachain/v1/internal/core/infrastructure/storage"
)

// NEX数据库检查工具
// 连接任意配置的存储引擎，执行单条读写或全量扫描
func main() {
	dbType := flag.String("type", "leveldb", "存储引擎 (leveldb|pebble|badgerdb|boltdb|redis|mockdb)")
	dbName := flag.String("name", "", "数据库逻辑名称")
	dbPath := flag.String("path", "", "数据库路径（redis引擎为服务器地址）")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Println("NEX数据库检查工具")
		fmt.Println("用法:")
		fmt.Println("  nex-dbshell -type <engine> -name <db> -path <dir> get <hex-key>")
		fmt.Println("  nex-dbshell -type <engine> -name <db> -path <dir> put <hex-key> <hex-value>")
		fmt.Println("  nex-dbshell -type <engine> -name <db> -path <dir> scan")
		fmt.Println("  nex-dbshell -type <engine> -name <db> -path <dir> stat")
		os.Exit(1)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := corelog.New(logconfig.New(&logconfig.LogOptions{
		Level:     level,
		ToConsole: true,
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	factory := storage.NewFactory(logger, nil)
	db := factory.Connect(database.Properties{
		database.PropDBType: *dbType,
		database.PropDBName: *dbName,
		database.PropDBPath: *dbPath,
	})
	if db == nil {
		fmt.Fprintln(os.Stderr, "数据库连接失败，请检查日志")
		os.Exit(1)
	}
	if err := db.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "数据库打开失败: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	switch args[0] {
	case "get":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "get 需要指定十六进制键")
			os.Exit(1)
		}
		key := mustHex(args[1])
		val, found, err := db.Get(ctx, key)
		exitOn(err)
		if !found {
			fmt.Println("(未找到)")
			return
		}
		fmt.Printf("%x\n", val)
	case "put":
		if len(args) < 3 {
			fmt.Fprintln(os.Stderr, "put 需要指定十六进制键和值")
			os.Exit(1)
		}
		exitOn(db.Put(ctx, mustHex(args[1]), mustHex(args[2])))
		exitOn(db.Commit(ctx))
		fmt.Println("已写入")
	case "scan":
		it, err := db.NewIterator(ctx)
		exitOn(err)
		defer it.Release()
		count := 0
		for it.Next() {
			fmt.Printf("%x  %x\n", it.Key(), it.Value())
			count++
		}
		exitOn(it.Error())
		fmt.Printf("共 %d 条\n", count)
	case "stat":
		empty, err := db.IsEmpty(ctx)
		exitOn(err)
		fmt.Printf("名称: %s\n", db.Name())
		fmt.Printf("是否为空: %v\n", empty)
		if size, err := db.Size(ctx); err == nil {
			fmt.Printf("键数量: %d\n", size)
		} else {
			fmt.Println("键数量: 该引擎不支持廉价计数")
		}
	default:
		fmt.Fprintf(os.Stderr, "未知命令: %s\n", args[0])
		os.Exit(1)
	}
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无效的十六进制: %s\n", s)
		os.Exit(1)
	}
	return b
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "操作失败: %v\n", err)
		os.Exit(1)
	}
}
