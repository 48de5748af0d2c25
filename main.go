package main

import "otpbot/cmd"

func main() {
	cmd.Execute()
}
