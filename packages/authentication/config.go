package authentication

import "time"

type AuthConfiguration struct {
	Scheme    string               `default:"jwt" usage:"selects which authentication to choose"`
	JWTConfig JWTAuthConfiguration `name:"jwt" usage:"defines the jwt configuration"`
}

type JWTAuthConfiguration struct {
	Secret   string        `default:"" usage:"the HMAC secret used to sign tokens, a random one is generated if empty"`
	Duration time.Duration `default:"24h" usage:"jwt token lifetime"`
}

const AuthJWT = "jwt"
