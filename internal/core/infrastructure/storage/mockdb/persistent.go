package mockdb

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/nexachain/v1/pkg/interfaces/infrastructure/log"
	storage "github.com/nexachain/v1/pkg/interfaces/infrastructure/storage"
)

// snapshotSuffix 快照文件后缀
// 快照格式仅为本实现内部使用，不保证跨实现可移植
const snapshotSuffix = ".snapshot.json"

// PersistentStore 实现关闭时落盘的mock数据库
//
// 数据在内存中持有，仅在Close时把整张逻辑表序列化到磁盘，
// Open时整体重载进内存。这是刻意保留的正确性陷阱：
// 已写入但尚未Close的数据在进程崩溃时全部丢失
type PersistentStore struct {
	Store
	path string
}

// 确保实现接口
var _ storage.Store = (*PersistentStore)(nil)

// NewPersistent 创建新的持久化mock存储实例
// 名称和路径必须非空，缺失时返回包装了ErrConfiguration的错误
func NewPersistent(name, path string, logger log.Logger) (*PersistentStore, error) {
	if name == "" || path == "" {
		return nil, fmt.Errorf("persistent mockdb 需要非空的名称和路径: %w", storage.ErrConfiguration)
	}
	return &PersistentStore{
		Store: Store{name: name, logger: logger},
		path:  path,
	}, nil
}

// Open 打开数据库并从快照整体重载数据
// 快照不存在时从空表开始，属于正常的首次打开
func (s *PersistentStore) Open() error {
	if s.data != nil {
		return nil
	}

	data := make(map[string][]byte)

	raw, err := os.ReadFile(s.snapshotPath())
	if err == nil {
		var encoded map[string]string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return fmt.Errorf("快照文件解析失败 %s: %w", s.snapshotPath(), storage.ErrStorageUnavailable)
		}
		for ek, ev := range encoded {
			k, err := base64.StdEncoding.DecodeString(ek)
			if err != nil {
				return fmt.Errorf("快照键解码失败: %w", storage.ErrStorageUnavailable)
			}
			v, err := base64.StdEncoding.DecodeString(ev)
			if err != nil {
				return fmt.Errorf("快照值解码失败: %w", storage.ErrStorageUnavailable)
			}
			data[string(k)] = v
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("快照文件读取失败 %s: %v: %w", s.snapshotPath(), err, storage.ErrStorageUnavailable)
	}

	s.data = data
	if s.logger != nil {
		s.logger.Infof("持久化mock数据库已打开: %s（重载%d个键）", s.name, len(data))
	}
	return nil
}

// Close 把整张逻辑表序列化到磁盘，然后释放内存
// 幂等操作：重复关闭是空操作
func (s *PersistentStore) Close() error {
	if s.data == nil {
		return nil
	}

	encoded := make(map[string]string, len(s.data))
	for k, v := range s.data {
		encoded[base64.StdEncoding.EncodeToString([]byte(k))] = base64.StdEncoding.EncodeToString(v)
	}

	raw, err := json.Marshal(encoded)
	if err != nil {
		return fmt.Errorf("快照序列化失败: %v: %w", err, storage.ErrOperationFailed)
	}

	if err := os.MkdirAll(s.path, 0700); err != nil {
		return fmt.Errorf("无法创建快照目录 %s: %v: %w", s.path, err, storage.ErrOperationFailed)
	}

	if err := os.WriteFile(s.snapshotPath(), raw, 0600); err != nil {
		return fmt.Errorf("快照写入失败 %s: %v: %w", s.snapshotPath(), err, storage.ErrOperationFailed)
	}

	if s.logger != nil {
		s.logger.Infof("持久化mock数据库已关闭: %s（落盘%d个键）", s.name, len(s.data))
	}
	s.data = nil
	return nil
}

// Path 返回快照所在目录
func (s *PersistentStore) Path() string { return s.path }

// snapshotPath 返回快照文件的完整路径
func (s *PersistentStore) snapshotPath() string {
	return filepath.Join(s.path, s.name+snapshotSuffix)
}
