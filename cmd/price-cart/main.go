package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/beanleaf/cafeapi/internal/domain"
	"github.com/beanleaf/cafeapi/internal/pricing"
)

// cartFile is the JSON shape of the cart input file.
type cartFile struct {
	Items []struct {
		ID              string  `json:"id"`
		Name            string  `json:"name"`
		UnitPrice       float64 `json:"unit_price"`
		Quantity        int     `json:"quantity"`
		Category        string  `json:"category"`
		PrepTimeMinutes int     `json:"prep_time_minutes"`
	} `json:"items"`
}

// offersFile is the JSON shape of the offers input file.
type offersFile struct {
	Offers []struct {
		ID                   string   `json:"id"`
		Name                 string   `json:"name"`
		Type                 string   `json:"type"`
		DiscountValue        float64  `json:"discount_value"`
		MaxDiscountAmount    *float64 `json:"max_discount_amount"`
		MinOrderAmount       *float64 `json:"min_order_amount"`
		ApplicableCategories []string `json:"applicable_categories"`
		ApplicableItems      []string `json:"applicable_items"`
		Priority             int      `json:"priority"`
	} `json:"offers"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/price-cart/main.go <cart.json> [offers.json]")
		fmt.Println("Example: go run cmd/price-cart/main.go cart.json offers.json")
		os.Exit(1)
	}

	items, err := loadCart(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load cart: %v\n", err)
		os.Exit(1)
	}

	var offers []domain.Offer
	if len(os.Args) > 2 {
		offers, err = loadOffers(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load offers: %v\n", err)
			os.Exit(1)
		}
	}

	result := pricing.Price(items, offers, pricing.DefaultTaxConfig()).Rounded()

	fmt.Printf("Cart: %d line(s)\n", len(items))
	for _, li := range items {
		fmt.Printf("  %-24s x%-3d @ %s\n", li.Name, li.Quantity, li.UnitPrice.StringFixed(2))
	}
	fmt.Println()
	fmt.Printf("Subtotal:            %10s\n", result.Subtotal.StringFixed(2))
	if result.AppliedOffer != nil {
		fmt.Printf("Offer applied:       %s\n", result.AppliedOffer.Name)
	} else {
		fmt.Printf("Offer applied:       none\n")
	}
	fmt.Printf("Discount:            %10s\n", result.DiscountAmount.StringFixed(2))
	fmt.Printf("Discounted subtotal: %10s\n", result.DiscountedSubtotal.StringFixed(2))
	fmt.Printf("CGST:                %10s\n", result.CGSTAmount.StringFixed(2))
	fmt.Printf("SGST:                %10s\n", result.SGSTAmount.StringFixed(2))
	fmt.Printf("Total:               %10s\n", result.Total.StringFixed(2))
	fmt.Printf("Estimated prep:      %d minute(s)\n", result.EstimatedPrepMinutes)
}

func loadCart(path string) ([]pricing.LineItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file cartFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	items := make([]pricing.LineItem, 0, len(file.Items))
	for _, raw := range file.Items {
		id, err := uuid.Parse(raw.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q: %w", raw.ID, err)
		}
		items = append(items, pricing.LineItem{
			ItemID:          id,
			Name:            raw.Name,
			UnitPrice:       decimal.NewFromFloat(raw.UnitPrice),
			Quantity:        raw.Quantity,
			Category:        raw.Category,
			PrepTimeMinutes: raw.PrepTimeMinutes,
		})
	}
	return items, nil
}

func loadOffers(path string) ([]domain.Offer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file offersFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	offers := make([]domain.Offer, 0, len(file.Offers))
	for _, raw := range file.Offers {
		id, err := uuid.Parse(raw.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid offer id %q: %w", raw.ID, err)
		}

		itemIDs := make([]uuid.UUID, 0, len(raw.ApplicableItems))
		for _, s := range raw.ApplicableItems {
			itemID, err := uuid.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("invalid applicable item id %q: %w", s, err)
			}
			itemIDs = append(itemIDs, itemID)
		}

		offer := domain.Offer{
			ID:                   id,
			Name:                 raw.Name,
			Type:                 domain.OfferType(raw.Type),
			DiscountValue:        decimal.NewFromFloat(raw.DiscountValue),
			ApplicableCategories: raw.ApplicableCategories,
			ApplicableItems:      itemIDs,
			Priority:             raw.Priority,
			IsActive:             true,
		}
		if raw.MaxDiscountAmount != nil {
			maxDiscount := decimal.NewFromFloat(*raw.MaxDiscountAmount)
			offer.MaxDiscountAmount = &maxDiscount
		}
		if raw.MinOrderAmount != nil {
			minOrder := decimal.NewFromFloat(*raw.MinOrderAmount)
			offer.MinOrderAmount = &minOrder
		}
		offers = append(offers, offer)
	}
	return offers, nil
}
