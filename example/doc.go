/*
Package example contains examples of the use of this library:

/client/par       command line client pushing the authorization request and opening the login in the browser
/client/config    configuration of the client, from a YAML file and environment variables
*/
package example
