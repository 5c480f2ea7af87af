// internal/adapters/out/firestore/order_codec_fs.go
package firestore

import (
	orderdom "homeplate/internal/domain/order"
	"homeplate/internal/domain/store"
)

// ========================
// Decode (document -> entity)
// ========================

// DecodeOrder maps a raw document to an Order with explicit defaults for
// missing/malformed fields. It never fails: numeric fields default to 0,
// strings to "", unknown statuses to pending, so a well-formed-but-unknown
// document cannot crash the projection.
func DecodeOrder(doc store.Document) orderdom.Order {
	m := doc.Fields
	return orderdom.Order{
		ID:               doc.ID,
		CustomerID:       mapGetStr(m, "customerId"),
		RestaurantID:     mapGetStr(m, "restaurantId"),
		CourierID:        mapGetStr(m, "courierId"),
		Items:            decodeLineItems(m["items"]),
		Subtotal:         mapGetInt(m, "subtotal"),
		DeliveryFee:      mapGetInt(m, "deliveryFee"),
		CommissionAmount: mapGetInt(m, "commissionAmount"),
		NetAmount:        mapGetInt(m, "netAmount"),
		Total:            mapGetInt(m, "total"),
		Status:           orderdom.ParseStatus(mapGetStr(m, "status")),
		CreatedAt:        mapGetTime(m, "createdAt"),
	}
}

func decodeLineItems(v any) []orderdom.LineItem {
	xs := asListAny(v)
	out := make([]orderdom.LineItem, 0, len(xs))
	for _, x := range xs {
		m := asMapAny(x)
		if m == nil {
			continue
		}
		out = append(out, orderdom.LineItem{
			MenuItemID: mapGetStr(m, "menuItemId"),
			Name:       mapGetStr(m, "name"),
			UnitPrice:  mapGetInt(m, "unitPrice"),
			Quantity:   mapGetInt(m, "quantity"),
		})
	}
	return out
}

// ========================
// Encode (entity -> field maps)
// ========================

// EncodeOrder produces the full field map for a create.
func EncodeOrder(o orderdom.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"menuItemId": it.MenuItemID,
			"name":       it.Name,
			"unitPrice":  it.UnitPrice,
			"quantity":   it.Quantity,
		})
	}
	return map[string]any{
		"customerId":       o.CustomerID,
		"restaurantId":     o.RestaurantID,
		"courierId":        o.CourierID,
		"items":            items,
		"subtotal":         o.Subtotal,
		"deliveryFee":      o.DeliveryFee,
		"commissionAmount": o.CommissionAmount,
		"netAmount":        o.NetAmount,
		"total":            o.Total,
		"status":           string(o.Status),
		"createdAt":        o.CreatedAt.UTC(),
	}
}

// EncodeOrderPatch produces the partial field map for an update; nil patch
// fields are left out entirely so the store only touches what changed.
func EncodeOrderPatch(p orderdom.Patch) map[string]any {
	fields := make(map[string]any)
	if p.Status != nil {
		fields["status"] = string(*p.Status)
	}
	if p.CourierID != nil {
		fields["courierId"] = *p.CourierID
	}
	return fields
}
