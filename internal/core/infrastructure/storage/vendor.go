// Package storage 提供存储工厂与数据库组合能力
package storage

// Vendor 内置存储引擎标识
type Vendor string

// 支持的存储引擎
const (
	// VendorLevelDB 嵌入式LSM引擎（goleveldb）
	VendorLevelDB Vendor = "leveldb"
	// VendorPebble 嵌入式LSM引擎（pebble）
	VendorPebble Vendor = "pebble"
	// VendorBadgerDB 嵌入式LSM引擎（badger）
	VendorBadgerDB Vendor = "badgerdb"
	// VendorBoltDB 嵌入式B+树引擎（bbolt）
	VendorBoltDB Vendor = "boltdb"
	// VendorRedis 服务端键值引擎（go-redis）
	VendorRedis Vendor = "redis"
	// VendorMockDB 内存模拟引擎，不持久化
	VendorMockDB Vendor = "mockdb"
	// VendorPersistentMockDB 内存模拟引擎，关闭时写快照
	VendorPersistentMockDB Vendor = "persistentmockdb"
)

// VendorFromString 解析引擎标识
// 未匹配任何内置引擎时返回false，由调用方转入驱动注册表路径
func VendorFromString(s string) (Vendor, bool) {
	switch Vendor(s) {
	case VendorLevelDB, VendorPebble, VendorBadgerDB, VendorBoltDB,
		VendorRedis, VendorMockDB, VendorPersistentMockDB:
		return Vendor(s), true
	}
	return "", false
}

// RequiresNameAndPath 返回该引擎是否要求非空的名称和路径
// 两种模拟引擎不落盘或自管路径校验，其余引擎一律要求
func (v Vendor) RequiresNameAndPath() bool {
	switch v {
	case VendorMockDB:
		return false
	case VendorPersistentMockDB:
		// 持久化模拟引擎在构造时自行校验
		return false
	}
	return true
}
