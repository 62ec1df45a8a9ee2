package tenant

// PrefixKey creates a namespaced cache key per store slug or id.
func PrefixKey(storeSlugOrID, key string) string {
	if storeSlugOrID == "" {
		return key
	}
	return storeSlugOrID + ":" + key
}
