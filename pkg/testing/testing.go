package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root when testing, so the logger's logs/ directory
	// lands in one place. usage is
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/pet-feeder-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
