// internal/adapters/out/firestore/courier_codec_fs.go
package firestore

import (
	courierdom "homeplate/internal/domain/courier"
	"homeplate/internal/domain/store"
)

func DecodeApplication(doc store.Document) courierdom.Application {
	m := doc.Fields
	return courierdom.Application{
		ID:           doc.ID,
		CourierID:    mapGetStr(m, "courierId"),
		RestaurantID: mapGetStr(m, "restaurantId"),
		Status:       courierdom.ParseStatus(mapGetStr(m, "status")),
		CreatedAt:    mapGetTime(m, "createdAt"),
	}
}

func EncodeApplication(a courierdom.Application) map[string]any {
	return map[string]any{
		"courierId":    a.CourierID,
		"restaurantId": a.RestaurantID,
		"status":       string(a.Status),
		"createdAt":    a.CreatedAt.UTC(),
	}
}
