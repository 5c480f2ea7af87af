// internal/adapters/out/firestore/user_codec_fs.go
package firestore

import (
	"homeplate/internal/domain/store"
	userdom "homeplate/internal/domain/user"
)

func DecodeUser(doc store.Document) userdom.User {
	m := doc.Fields
	return userdom.User{
		ID:          doc.ID,
		DisplayName: mapGetStr(m, "displayName"),
		Email:       mapGetStr(m, "email"),
		Role:        userdom.ParseRole(mapGetStr(m, "role")),
	}
}
