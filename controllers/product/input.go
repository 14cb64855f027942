package productcontroller

import (
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ProductInput accepts price and stock as JSON numbers or numeric strings;
// existing clients send both.
type ProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       any    `json:"price"`
	Stock       any    `json:"stock"`
	ImageURL    string `json:"imageUrl"`
}

type parsedProduct struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	ImageURL    string
}

// parse validates and coerces the input. The second return value is a
// client-facing error message, empty on success.
func (in *ProductInput) parse() (parsedProduct, string) {
	var p parsedProduct

	p.Name = strings.TrimSpace(in.Name)
	if p.Name == "" || in.Price == nil || in.Stock == nil {
		return p, "Missing required fields: name, price, and stock are mandatory"
	}

	price, ok := toFloat(in.Price)
	if !ok || price < 0 {
		return p, "Invalid price"
	}
	stock, ok := toInt(in.Stock)
	if !ok || stock < 0 {
		return p, "Invalid stock"
	}

	p.Price = price
	p.Stock = stock
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	return p, ""
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), n == float64(int(n))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

func internalError(c *gin.Context, msg string, err error) {
	resp := gin.H{"success": false, "message": msg, "data": nil}
	if os.Getenv("APP_ENV") == "development" && err != nil {
		resp["error"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, resp)
}
