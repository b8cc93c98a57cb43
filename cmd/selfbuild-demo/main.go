// Command selfbuild-demo rebuilds itself with "go build" whenever this file is
// newer than the executable, then greets its arguments.
//
//	go build -o demo ./cmd/selfbuild-demo
//	./demo world
//	touch cmd/selfbuild-demo/main.go
//	./demo world   # [INFO] renaming ./demo -> ./demo.old, [CMD] go build ..., [CMD] ./demo world
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AndreyAkinshin/selfbuild/pkg/selfbuild"
)

func main() {
	selfbuild.Me(selfbuild.WithToolchain("go"))

	fmt.Println(greeting(os.Args[1:]))
}

func greeting(names []string) string {
	if len(names) == 0 {
		return "Hello, world!"
	}
	return "Hello, " + strings.Join(names, " and ") + "!"
}
