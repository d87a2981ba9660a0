package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"
)

type Config struct {
	DB *gorm.DB

	Prod_env bool

	ProxyPath string   `toml:"proxy_path"` // used in webhook-sender
	ProxyList []string `toml:"-"`          // reads proxies from ProxyPath and fills it with

	Testing struct {
		Enabled        bool
		TxConfirmDelay int `toml:"tx_confirm_delay"` // seconds
	} `toml:"testing"`

	Bitcart Bitcart `toml:"bitcart"`

	Postgres struct {
		Host     string
		User     string
		Password string
		Db_name  string
		Port     uint16
		Ssl_mode string
	}
	Nats struct {
		Servers     string
		TomlServers []string `toml:"servers"`
	}
	Api struct {
		Ipv4  string
		Proto string
	} `toml:"gateway_web"`
}

// Bitcart holds the upstream processor settings. Token / store id / app base
// come from the environment in deployments (same variables the storefront used).
type Bitcart struct {
	ApiUrls    []string `toml:"api_urls"` // one or more mirrors, round-robined
	ApiUrl     string   `toml:"-" envconfig:"BITCART_API_URL"`
	Token      string   `toml:"token" envconfig:"BITCART_TOKEN"`
	StoreID    string   `toml:"store_id" envconfig:"BITCART_STORE_ID"`
	AppBaseURL string   `toml:"app_base_url" envconfig:"APP_BASE_URL"` // base for notification/redirect urls
}

func ReadConfig() *Config {
	byte_config, err := os.ReadFile(os.Getenv("CONFIG"))
	if err != nil {
		panic(err)
	}

	var config Config
	_, err = toml.Decode(string(byte_config), &config)
	if err != nil {
		panic(err)
	}

	if err := envconfig.Process("", &config.Bitcart); err != nil {
		panic(err)
	}

	if config.Bitcart.ApiUrl != "" {
		config.Bitcart.ApiUrls = append(config.Bitcart.ApiUrls, config.Bitcart.ApiUrl)
	}

	if config.Nats.TomlServers != nil {
		user, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-user.txt")
		if err != nil {
			panic(err)
		}

		pass, err := os.ReadFile(os.Getenv("SECRETS") + "/nats-password.txt")
		if err != nil {
			panic(err)
		}

		var formatedServers string
		for _, x := range config.Nats.TomlServers {
			connectUrl := fmt.Sprintf("nats://%s:%s@%s,", user, pass, string(x))
			formatedServers += connectUrl
		}

		config.Nats.Servers = formatedServers
	}

	// webhook proxies
	if config.ProxyPath != "" {
		config.ProxyList = GetProxyList(config.ProxyPath)
	}

	if config.Prod_env && config.Testing.Enabled {
		panic("cannot use testing in prod")
	}

	return &config
}

func GetProxyList(path string) []string {
	proxyList, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	proxyListArray := strings.Split(string(proxyList), "\n")
	return proxyListArray
}
