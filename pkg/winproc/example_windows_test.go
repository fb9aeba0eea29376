package winproc_test

import (
	"fmt"

	"github.com/go-winmem/winmem/pkg/winproc"
)

func ExampleFind() {
	p, err := winproc.Find("notepad.exe")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer p.Close()

	modules, err := p.Modules()
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, mod := range modules {
		fmt.Printf("%#x %s\n", mod.Base, mod.Name)
	}
}
