package handlers

import (
	"net/http"

	"github.com/5w1tchy/blog-ui/internal/api/httpx"
)

func Health(w http.ResponseWriter, r *http.Request) {
	httpx.OKNoData(w)
}
