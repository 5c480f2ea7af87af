// internal/adapters/out/firestore/restaurant_codec_fs.go
package firestore

import (
	restdom "homeplate/internal/domain/restaurant"
	"homeplate/internal/domain/store"
)

func DecodeRestaurant(doc store.Document) restdom.Restaurant {
	m := doc.Fields
	return restdom.Restaurant{
		ID:             doc.ID,
		OwnerID:        mapGetStr(m, "ownerId"),
		Name:           mapGetStr(m, "name"),
		CommissionRate: mapGetFloat(m, "commissionRate"),
		DeliveryFee:    mapGetInt(m, "deliveryFee"),
	}
}
