package main

import "github.com/Keeper-Wallet/provider-keeper/cmd"

func main() {
	cmd.Execute()
}
