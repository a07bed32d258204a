package config

var AppVersion = "DEVELOPMENT"

const (
	AppName = "slideshowbob"
	LogFile = "slideshowbob.log"
	CfgFile = "config.toml"
)
