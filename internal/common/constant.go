package common

// SessionCookieName is the cookie that carries the signed session token.
const SessionCookieName = "token"

// FeaturedFoodLimit caps the featured listing.
const FeaturedFoodLimit = 6
