// Package render produces the cart sidebar markup and totals text.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/salmankhalil12/Restaurant-Site/internal/domain"
)

// Renderer redraws the cart view from scratch. Both calls are idempotent.
type Renderer interface {
	RenderCart(items []domain.LineItem)
	RenderTotals(count int, total decimal.Decimal)
}

// View is the most recent rendering.
type View struct {
	CartHTML string `json:"cart_html"`
	Count    string `json:"count"`
	Total    string `json:"total"`
}

const cartTemplate = `{{define "cart"}}{{if not .}}
<div class="cart-empty">
  <i class="fas fa-shopping-basket"></i>
  <p>Your cart is empty</p>
  <p style="font-size: 14px; color: #999;">Add some delicious food!</p>
</div>
{{else}}{{range .}}
<div class="cart-item" data-id="{{.ID}}">
  <img src="{{.Image}}" alt="{{.Name}}">
  <div class="cart-item-details">
    <h5>{{.Name}}</h5>
    <span class="price">{{lineTotal .}}</span>
    <div class="quantity-controls">
      <button class="decrease-qty" data-id="{{.ID}}">
        <i class="fas fa-minus"></i>
      </button>
      <span>{{.Quantity}}</span>
      <button class="increase-qty" data-id="{{.ID}}">
        <i class="fas fa-plus"></i>
      </button>
    </div>
  </div>
  <button class="remove-item" data-id="{{.ID}}">
    <i class="fas fa-trash-alt"></i>
  </button>
</div>
{{end}}{{end}}{{end}}`

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"lineTotal": func(item domain.LineItem) string { return domain.FormatPrice(item.LineTotal()) },
}).Parse(cartTemplate))

// HTML renders into strings and keeps the last result. It is safe for
// concurrent use.
type HTML struct {
	mu   sync.RWMutex
	view View
}

// NewHTML returns a renderer showing an empty cart.
func NewHTML() *HTML {
	h := &HTML{}
	h.RenderCart(nil)
	h.RenderTotals(0, decimal.Zero)
	return h
}

// RenderCart replaces the cart body markup.
func (h *HTML) RenderCart(items []domain.LineItem) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cart", items); err != nil {
		// Only reachable through a template bug; keep the message visible.
		buf.Reset()
		fmt.Fprintf(&buf, "<!-- render error: %s -->", template.HTMLEscapeString(err.Error()))
	}

	h.mu.Lock()
	h.view.CartHTML = buf.String()
	h.mu.Unlock()
}

// RenderTotals replaces the count badge and total text.
func (h *HTML) RenderTotals(count int, total decimal.Decimal) {
	h.mu.Lock()
	h.view.Count = strconv.Itoa(count)
	h.view.Total = domain.FormatPrice(total.Round(2))
	h.mu.Unlock()
}

// View returns the last rendering.
func (h *HTML) View() View {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.view
}
