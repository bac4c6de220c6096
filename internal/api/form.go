package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/dgnsrekt/wheelscan/internal/chain"
)

// ChainRequest identifies one chain page to fetch.
type ChainRequest struct {
	Symbol string
	Side   chain.Side
	Window chain.Window
}

func (r ChainRequest) String() string {
	return r.Symbol + "/" + r.Side.String()
}

// formValues builds the POST body the chain page's own form submits.
// Fields other than symbol, side, greeks and the strike window are sent
// with the values the site's form uses by default.
func formValues(req ChainRequest) url.Values {
	symbol := strings.ToUpper(req.Symbol)

	v := url.Values{}
	v.Set("symbol", symbol)
	v.Set("chtype", req.Side.Code())
	v.Set("nonstd", "-1")
	v.Set("greeks", "1")
	v.Set("mn1min", strconv.Itoa(req.Window.Min))
	v.Set("mn1max", strconv.Itoa(req.Window.Max))
	v.Set("expmin", "0")
	v.Set("expmax", "2")
	v.Set("ovmin", "0")
	v.Set("ovmax", "6")
	v.Set("strike", "")
	v.Set("expiry", "")
	v.Set("op", "chains")
	v.Set("prevsym", symbol)
	v.Set("clear", "0")
	v.Set("v", "1")
	v["prevns"] = []string{"-1", symbol}
	return v
}
