// Package storage 提供NEX系统的存储错误分类定义
//
// ⚠️ **存储错误分类 (Storage Error Taxonomy)**
//
// 本文件定义了存储层的错误分类哨兵，专注于：
// - 配置错误与运行时错误的明确区分
// - 错误包装：各引擎的原生错误类型统一翻译为本分类
// - 传播策略：配置/驱动错误在connect处终结，运行时错误向调用方传播
package storage

import "errors"

var (
	// ErrConfiguration 配置错误
	// 持久化引擎缺少必需的名称/路径，或后端类型未知且无可加载驱动
	ErrConfiguration = errors.New("storage: invalid configuration")

	// ErrDriverLoad 驱动加载错误
	// 动态加载的后端解析、实例化或连接失败
	ErrDriverLoad = errors.New("storage: driver load failed")

	// ErrStorageUnavailable 存储不可用
	// 原生引擎无法打开/访问其文件或连接
	ErrStorageUnavailable = errors.New("storage: backend unavailable")

	// ErrUnsupportedOperation 不支持的操作
	// 给定后端未实现的能力，例如廉价的数量统计
	ErrUnsupportedOperation = errors.New("storage: unsupported operation")

	// ErrOperationFailed 操作失败
	// 针对已打开引擎的get/put/delete/commit失败
	ErrOperationFailed = errors.New("storage: operation failed")

	// ErrClosed 数据库未打开
	// 对未打开（或已关闭）句柄执行数据操作
	ErrClosed = errors.New("storage: database not open")
)
