package main

import "github.com/socialjobs/workmatch/cmd"

func main() {
	cmd.Execute()
}
