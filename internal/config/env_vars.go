package config

type EnvConfig interface {
	GetAppName() string
	GetLogLevel() string
	GetEnv() string
}

type EnvVars struct {
	AppName  string `env:"APP_NAME" envDefault:"Cognito Bridge"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Env      string `env:"ENV" envDefault:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) GetEnv() string {
	return e.Env
}
