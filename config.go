package spotled

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alparslanahmed/spotled/internal/logging"
)

// ─── Yapılandırma Dosyası ───────────────────────────────────────────────────────
//
// Seçenekler YAML/TOML/JSON dosyasından ve SPOTLED_ önekli ortam
// değişkenlerinden okunabilir:
//
//	device:
//	  timeout: 200ms
//	  attempts: 5
//	  connectPolls: 50
//	  connectPollInterval: 100ms
//	  writeRate: 0
//	display:
//	  width: 48
//	  height: 12
//	logging:
//	  level: info
//	  format: console
//
// Ortam değişkenlerinde nokta alt çizgiye çevrilir: SPOTLED_DEVICE_ATTEMPTS=3.

// DeviceConfig, aktarım ayarlarıdır.
type DeviceConfig struct {
	Timeout             time.Duration `mapstructure:"timeout"`
	Attempts            int           `mapstructure:"attempts"`
	ConnectPolls        int           `mapstructure:"connectPolls"`
	ConnectPollInterval time.Duration `mapstructure:"connectPollInterval"`
	WriteRate           float64       `mapstructure:"writeRate"` // parça/saniye, 0 sınırsız
	WriteBurst          int           `mapstructure:"writeBurst"`
}

// DisplayConfig, ekran boyutudur.
type DisplayConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LogFileConfig, dönen log dosyası ayarlarıdır.
type LogFileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig, log seviyesi ve çıktı ayarlarıdır.
type LoggingConfig struct {
	Level  string        `mapstructure:"level"`
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

// Config, dosyadan okunan tüm ayarlardır.
type Config struct {
	Device  DeviceConfig  `mapstructure:"device"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoadConfig, path'teki dosyayı ve SPOTLED_ ortam değişkenlerini okur.
// path boşsa yalnızca varsayılanlar ve ortam değişkenleri kullanılır;
// verilen path bulunamazsa hata döner.
//
//	cfg, err := spotled.LoadConfig("spotled.yaml")
//	dev := spotled.NewDevice(transport, cfg.DeviceOptions()...)
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setConfigDefaults(v)

	v.SetEnvPrefix("SPOTLED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("yapılandırma okunamadı: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("yapılandırma çözümlenemedi: %w", err)
	}
	return &cfg, nil
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("device.timeout", DefaultTimeout)
	v.SetDefault("device.attempts", DefaultAttempts)
	v.SetDefault("device.connectPolls", DefaultConnectPolls)
	v.SetDefault("device.connectPollInterval", DefaultConnectPollInterval)
	v.SetDefault("device.writeRate", 0)
	v.SetDefault("device.writeBurst", ChunkWindow)

	v.SetDefault("display.width", DefaultWidth)
	v.SetDefault("display.height", DefaultHeight)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 7)
	v.SetDefault("logging.file.compress", false)
}

// NewLogger, Logging bölümüne göre bir zap logger oluşturur.
func (c *Config) NewLogger() *zap.Logger {
	return logging.NewLogger(logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		File: logging.FileOptions{
			Filename:   c.Logging.File.Filename,
			MaxSizeMB:  c.Logging.File.MaxSizeMB,
			MaxBackups: c.Logging.File.MaxBackups,
			MaxAgeDays: c.Logging.File.MaxAgeDays,
			Compress:   c.Logging.File.Compress,
		},
	})
}

// DeviceOptions, yapılandırmayı NewDevice seçeneklerine dönüştürür.
// Logger, Logging bölümünden oluşturulur.
func (c *Config) DeviceOptions() []DeviceOption {
	return []DeviceOption{
		WithTimeout(c.Device.Timeout),
		WithAttempts(c.Device.Attempts),
		WithConnectPolling(c.Device.ConnectPolls, c.Device.ConnectPollInterval),
		WithWriteRate(c.Device.WriteRate, c.Device.WriteBurst),
		WithDisplaySize(c.Display.Width, c.Display.Height),
		WithLogger(c.NewLogger()),
	}
}
