package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

const bannerText = `
     ██╗ ██████╗ ██████╗ ███████╗████████╗ █████╗ ███████╗██╗  ██╗
     ██║██╔═══██╗██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔════╝██║  ██║
     ██║██║   ██║██████╔╝███████╗   ██║   ███████║███████╗███████║
██   ██║██║   ██║██╔══██╗╚════██║   ██║   ██╔══██║╚════██║██╔══██║
╚█████╔╝╚██████╔╝██████╔╝███████║   ██║   ██║  ██║███████║██║  ██║
 ╚════╝  ╚═════╝ ╚═════╝ ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`

// ColorizeText fades the text between two random colors. Iteration is
// rune-based; the banner's box-drawing characters are multibyte.
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))
	from := randomRGB(random)
	to := randomRGB(random)

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		b.WriteString(from.Fade(0, float32(len(runes)), float32(i), to).Sprint(string(r)))
	}
	return b.String()
}

func randomRGB(random *rand.Rand) pterm.RGB {
	return pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
}

// PrintBanner displays the application banner.
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}
