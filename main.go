/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/CordisO/Vybrato/cmd"

func main() {
	cmd.Execute()
}
