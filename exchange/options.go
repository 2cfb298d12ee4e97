package exchange

type Options struct {
	FollowRedirects bool
	SkipVerify      bool
	Auth            AuthOptions
}

type AuthOptions struct {
	Enabled  bool
	UserName string
	Password string
}
