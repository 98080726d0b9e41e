// img2color - describe the colour palette of an image
//
// img2color extracts the dominant colours of an image and names them with
// the CSS3, XKCD and derived design, common, family and type vocabularies.
package main

import (
	"github.com/jmylchreest/img2color/internal/cli"
)

func main() {
	cli.Execute()
}
