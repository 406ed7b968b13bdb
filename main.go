package main

import "github.com/trustchain/trustchain/components/app"

func main() {
	app.App().Run()
}
