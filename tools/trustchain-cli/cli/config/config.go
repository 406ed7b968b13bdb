package config

import (
	"github.com/spf13/viper"

	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

var ConfigPath string

func Read() {
	viper.SetConfigFile(ConfigPath)
	viper.SetConfigType("json")
	viper.SetEnvPrefix("trustchain")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func APIURL() string {
	url := viper.GetString("api.url")
	if url == "" {
		return "http://127.0.0.1:5000"
	}
	return url
}

func Token() string {
	return viper.GetString("api.token")
}

func SetToken(token string) {
	Set("api.token", token)
}

// NFCMasterSecret is the secret of the node's chip emulator, needed to answer challenges locally.
func NFCMasterSecret() string {
	return viper.GetString("nfc.masterSecret")
}

func Set(key string, value any) {
	viper.Set(key, value)
	log.Check(viper.WriteConfigAs(ConfigPath))
}
