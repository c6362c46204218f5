// internal/api/handler.go
package api

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/rovshanmuradov/token-launcher/internal/blockchain"
	"github.com/rovshanmuradov/token-launcher/internal/image"
	"github.com/rovshanmuradov/token-launcher/internal/launch"
	"github.com/rovshanmuradov/token-launcher/internal/ledger"
	"go.uber.org/zap"
)

const (
	maxFormMemory = 32 << 20

	msgMissingParams = "Missing required parameters"
	msgUnknownError  = "Unknown server error"
)

var errNoWallet = errors.New("wallet address is required")

// launchForm — поле params формы. imageUrl используется, если файл не приложен.
type launchForm struct {
	launch.Params
	ImageURL string `json:"imageUrl,omitempty"`
}

// BuildLaunch godoc
// @Summary Build unsigned launch transaction
// @Description Собирает транзакцию запуска токена; подпись остаётся за кошельком
// @Tags launchpad
// @Accept multipart/form-data
// @Produce json
// @Param platform path string true "bonk | pump"
// @Param params formData string true "Token params JSON"
// @Param walletPublicKey formData string true "Creator wallet"
// @Param solBuyAmount formData number true "Initial buy in SOL"
// @Param image formData file false "Token image"
// @Success 200 {object} LaunchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/launchpad/{platform} [post]
func (s *Server) BuildLaunch(w http.ResponseWriter, r *http.Request) {
	platform := launch.Platform(r.PathValue("platform"))
	logger := s.logger.With(zap.String("platform", string(platform)))

	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rawParams := r.FormValue("params")
	walletKey := r.FormValue("walletPublicKey")
	solBuyAmount, amountErr := strconv.ParseFloat(r.FormValue("solBuyAmount"), 64)
	if rawParams == "" || walletKey == "" || amountErr != nil || math.IsNaN(solBuyAmount) {
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	}

	adapter, err := s.deps.Registry.Get(platform)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	var form launchForm
	if err := json.Unmarshal([]byte(rawParams), &form); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	owner, err := solana.PublicKeyFromBase58(walletKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	src, err := imageSource(r, form.ImageURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	params := form.Params
	params.Platform = platform
	params.SolAmount = solBuyAmount
	params.Image = src
	if err := params.Validate(); err != nil {
		msg := err.Error()
		if errors.Is(err, launch.ErrMissingParams) {
			msg = msgMissingParams
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	built := adapter.BuildUnsignedLaunch(r.Context(), launch.BuildRequest{
		Params: params,
		Wallet: owner,
		Image:  s.deps.Images.Resolve(r.Context(), src),
	})
	unsigned, ok := built.Unwrap()
	if !ok {
		logger.Warn("Launch build failed", zap.String("reason", built.Reason()))
		writeJSON(w, http.StatusOK, LaunchResponse{Error: built.Reason()})
		return
	}

	encoded, err := blockchain.EncodeBase64(unsigned.Tx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("Unsigned launch served",
		zap.String("wallet", owner.String()),
		zap.String("mint", unsigned.Mint))
	writeJSON(w, http.StatusOK, LaunchResponse{
		Success:     true,
		Transaction: encoded,
		Mint:        unsigned.Mint,
	})
}

func imageSource(r *http.Request, url string) (image.Source, error) {
	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		if url != "" {
			return image.FromURL(url), nil
		}
		return image.None(), nil
	case err != nil:
		return image.Source{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return image.Source{}, err
	}
	return image.FromUpload(image.Image{
		Data:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}), nil
}

// Platforms godoc
// @Summary List launch platforms
// @Tags launchpad
// @Produce json
// @Success 200 {object} PlatformsResponse
// @Router /api/platforms [get]
func (s *Server) Platforms(w http.ResponseWriter, r *http.Request) {
	names := s.deps.Registry.List()
	resp := PlatformsResponse{Platforms: make([]string, 0, len(names))}
	for _, n := range names {
		resp.Platforms = append(resp.Platforms, string(n))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Launches godoc
// @Summary Launch history of a wallet
// @Description Записи от новых к старым; нечитаемые данные дают пустой список
// @Tags ledger
// @Produce json
// @Param wallet path string true "Wallet address"
// @Success 200 {array} ledger.Record
// @Router /api/wallets/{wallet}/launches [get]
func (s *Server) Launches(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, errNoWallet.Error())
		return
	}
	records := s.deps.Ledger.ReadAll(r.Context(), wallet)
	if records == nil {
		records = []ledger.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// ClearLaunches godoc
// @Summary Remove launch history of a wallet
// @Tags ledger
// @Param wallet path string true "Wallet address"
// @Success 204
// @Failure 500 {object} ErrorResponse
// @Router /api/wallets/{wallet}/launches [delete]
func (s *Server) ClearLaunches(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	if err := s.deps.Ledger.Clear(r.Context(), wallet); err != nil {
		s.logger.Error("Failed to clear ledger", zap.String("wallet", wallet), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FeedPosts godoc
// @Summary Social feed posts
// @Tags feed
// @Produce json
// @Success 200 {array} feed.Post
// @Failure 500 {object} ErrorResponse
// @Router /api/feed [get]
func (s *Server) FeedPosts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Feed == nil {
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}
	posts, err := s.deps.Feed.Posts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = msgUnknownError
	}
	writeJSON(w, status, ErrorResponse{Success: false, Error: msg})
}
