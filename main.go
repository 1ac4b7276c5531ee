/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/lawsarthi/sarthi/cmd"

func main() {
	cmd.Execute()
}
