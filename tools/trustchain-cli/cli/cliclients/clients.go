package cliclients

import (
	"github.com/trustchain/trustchain/clients/apiclient"
	"github.com/trustchain/trustchain/tools/trustchain-cli/cli/config"
	"github.com/trustchain/trustchain/tools/trustchain-cli/log"
)

func NodeClient() *apiclient.Client {
	log.Verbosef("using node %s\n", config.APIURL())

	return apiclient.New(config.APIURL(), apiclient.WithToken(config.Token()))
}
