package main

import "github.com/quillhq/quill/cmd"

func main() {
	cmd.Execute()
}
