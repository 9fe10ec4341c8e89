package config

import (
	"math"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/pingcap/log"
	"github.com/pkg/errors"
)

const (
	defaultAddr           = ":1234"
	defaultMaxMessageSize = "32MiB"
	defaultReadBufferSize = "64KiB"
	defaultPollTimeout    = 500 * time.Millisecond
)

// Config 服务端配置，可以从 toml 文件加载，命令行参数优先
type Config struct {
	Addr string `toml:"addr" json:"addr"`

	// MaxMessageSize 单个请求帧负载上限，支持 "32MiB" 这样的写法
	MaxMessageSize string `toml:"max-message-size" json:"max-message-size"`
	// ReadBufferSize 单次非阻塞读的缓冲区大小
	ReadBufferSize string `toml:"read-buffer-size" json:"read-buffer-size"`
	// PollTimeout 每轮等待就绪的超时时间，事件循环至少按这个频率检查退出信号
	PollTimeout Duration `toml:"poll-timeout" json:"poll-timeout"`

	// MetricsAddr 为空时不暴露 /metrics
	MetricsAddr string `toml:"metrics-addr" json:"metrics-addr"`

	Log log.Config `toml:"log" json:"log"`

	maxMessageBytes int
	readBufferBytes int
}

func NewDefaultConfig() *Config {
	cfg := &Config{
		Addr:           defaultAddr,
		MaxMessageSize: defaultMaxMessageSize,
		ReadBufferSize: defaultReadBufferSize,
		PollTimeout:    NewDuration(defaultPollTimeout),
		Log: log.Config{
			Level:  "info",
			Format: "text",
		},
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Load 在默认值基础上叠加配置文件，未知字段视为错误
func Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Errorf("config %s contains unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验并解析带单位的字段，修改字段后必须重新调用
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}

	maxMsg, err := parseSize("max-message-size", c.MaxMessageSize, math.MaxUint32)
	if err != nil {
		return err
	}
	readBuf, err := parseSize("read-buffer-size", c.ReadBufferSize, math.MaxInt32)
	if err != nil {
		return err
	}

	if c.PollTimeout.Duration <= 0 {
		return errors.Errorf("poll-timeout must be positive, got %s", c.PollTimeout)
	}

	c.maxMessageBytes = maxMsg
	c.readBufferBytes = readBuf
	return nil
}

// MaxMessageBytes 解析后的帧上限，需先 Validate
func (c *Config) MaxMessageBytes() int {
	return c.maxMessageBytes
}

// ReadBufferBytes 解析后的读缓冲大小，需先 Validate
func (c *Config) ReadBufferBytes() int {
	return c.readBufferBytes
}

func parseSize(name, value string, limit int64) (int, error) {
	n, err := units.RAMInBytes(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s %q", name, value)
	}
	if n <= 0 || n > limit {
		return 0, errors.Errorf("%s %q out of range (0, %d]", name, value, limit)
	}
	return int(n), nil
}
