package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/radieske/exchange-market-data/internal/market-data-service/cache"
	"github.com/radieske/exchange-market-data/pkg/contracts/markets"
)

// API expõe os endpoints REST de consulta dos snapshots decodificados
// Lê apenas do cache (Redis); quem escreve é o market-decoder-worker
type API struct {
	Cache *cache.Cache     // snapshots decodificados
	WS    http.HandlerFunc // opcional: /ws
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/markets", a.listMarkets)                    // Última listagem de mercados
	r.Get("/v1/markets/{id}/prices", a.getPrices)          // Livro compacto de um mercado
	r.Get("/v1/markets/{id}/prices/best", a.getBestPrices) // Melhor back/lay por runner
	r.Get("/v1/markets/{id}/complete", a.getComplete)      // Profundidade completa
	if a.WS != nil {
		r.Get("/ws", a.WS)
	}
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// marketID lê o {id} da rota; responde 400 se não for inteiro
func marketID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid market id")
		return 0, false
	}
	return id, true
}

// listMarkets retorna a última listagem, opcionalmente filtrada por ?status=
func (a *API) listMarkets(w http.ResponseWriter, r *http.Request) {
	ms, err := a.Cache.GetMarkets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]markets.Market, 0, len(ms))
		for _, m := range ms {
			if strings.EqualFold(string(m.Status), status) {
				filtered = append(filtered, m)
			}
		}
		ms = filtered
	}
	writeJSON(w, http.StatusOK, ms)
}

func (a *API) getPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := marketID(w, r)
	if !ok {
		return
	}
	mp, found, err := a.Cache.GetPrices(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, mp)
}

// BestPrice é o topo do livro de um runner
type BestPrice struct {
	SelectionID int64            `json:"selectionId"`
	Back        *decimal.Decimal `json:"back,omitempty"`
	Lay         *decimal.Decimal `json:"lay,omitempty"`
}

// getBestPrices retorna o primeiro nível de cada lado por runner, na ordem da exchange
func (a *API) getBestPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := marketID(w, r)
	if !ok {
		return
	}
	mp, found, err := a.Cache.GetPrices(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	out := make([]BestPrice, 0, len(mp.RunnerPrices))
	for _, rp := range mp.RunnerPrices {
		bp := BestPrice{SelectionID: rp.SelectionID}
		if l, ok := rp.BestBack(); ok {
			bp.Back = &l.Price
		}
		if l, ok := rp.BestLay(); ok {
			bp.Lay = &l.Price
		}
		out = append(out, bp)
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getComplete(w http.ResponseWriter, r *http.Request) {
	id, ok := marketID(w, r)
	if !ok {
		return
	}
	cp, found, err := a.Cache.GetComplete(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, cp)
}
