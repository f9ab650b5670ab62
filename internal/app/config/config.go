package config

import (
	"flag"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	APIKey         string        `env:"SHIPSTATION_API_KEY"`
	APISecret      string        `env:"SHIPSTATION_API_SECRET"`
	Host           string        `env:"SHIPSTATION_HOST" envDefault:"ssapi.shipstation.com"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"INFO"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3s"`
	Address        string        `env:"RUN_ADDRESS"`
}

func (cfg *Config) Sanitize() {
	cfg.Host = strings.TrimSuffix(cfg.Host, "/")
}

var Settings Config

type NetAddress struct {
	Host string
	Port int
}

func (n *NetAddress) String() string {
	return n.Host + ":" + strconv.Itoa(n.Port)
}

func (n *NetAddress) Set(flagValue string) error {
	host, port, err := net.SplitHostPort(flagValue)
	if err != nil {
		return err
	}
	if host == "" && port == "" {
		n.Host = "localhost"
		n.Port = 8081
		return nil
	}
	port = strings.TrimSuffix(port, "/")
	n.Host = host
	n.Port, err = strconv.Atoi(port)
	return err
}

func ParseFlags() error {
	listenAddr := new(NetAddress)
	apiKey := flag.String("k", "", "ShipStation API key")
	apiSecret := flag.String("s", "", "ShipStation API secret")
	apiHost := flag.String("r", "", "ShipStation API host")
	flag.Var(listenAddr, "a", "Address to listen for webhook callbacks on, host:port")
	flag.Parse()

	if err := env.Parse(&Settings); err != nil {
		return err
	}
	if listenAddr.Host != "" || listenAddr.Port != 0 {
		Settings.Address = listenAddr.String()
	}
	if Settings.Address == "" {
		Settings.Address = "localhost:8081"
	}
	if *apiKey != "" {
		Settings.APIKey = *apiKey
	}
	if *apiSecret != "" {
		Settings.APISecret = *apiSecret
	}
	if *apiHost != "" {
		Settings.Host = *apiHost
	}
	Settings.Sanitize()
	return nil
}

func init() {
	Settings.Host = "ssapi.shipstation.com"
	Settings.LogLevel = "INFO"
	Settings.RequestTimeout = 3 * time.Second
	Settings.Address = "localhost:8081"
}
