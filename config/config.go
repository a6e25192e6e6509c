package config

var Version = "0.2.0"
