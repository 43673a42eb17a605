package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type PollerConfig struct {
	Interval            time.Duration `yaml:"interval" validate:"required|min:1"`
	SourceTimeout       time.Duration `yaml:"sourceTimeout" validate:"required|min:1"`
	LeadTime            time.Duration `yaml:"leadTime" validate:"required|min:1"`
	CancelMissThreshold int           `yaml:"cancelMissThreshold" validate:"required|min:1"`
	PruneGrace          time.Duration `yaml:"pruneGrace"`
}

type SourceConfig struct {
	Enabled bool   `yaml:"enabled"`
	BaseURL string `yaml:"baseURL"`
}

type SourcesConfig struct {
	Codeforces SourceConfig `yaml:"codeforces"`
	Nowcoder   SourceConfig `yaml:"nowcoder"`
	Luogu      SourceConfig `yaml:"luogu"`
	Scpc       SourceConfig `yaml:"scpc"`
}

type NotifierConfig struct {
	Type     string `yaml:"type" validate:"required|in:onebot,telegram,log"`
	Endpoint string `yaml:"endpoint"`
	Token    string `yaml:"token"`
}

type ArchiveConfig struct {
	Dir string `yaml:"dir"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Poller      PollerConfig   `yaml:"poller"`
	Sources     SourcesConfig  `yaml:"sources"`
	Notifier    NotifierConfig `yaml:"notifier"`
	WebServer   Server         `yaml:"webServer"`
	Persistence Persistence    `yaml:"persistence"`
	Archive     ArchiveConfig  `yaml:"archive"`
	Logger      LoggerConfig   `yaml:"logger"`
	Cache       CacheConfig    `yaml:"cache"`
	Metrics     MetricsConfig  `yaml:"metrics"`
}
