package internal

const COOKIE_ACCESS_TOKEN_NAME = "rokto_session"
