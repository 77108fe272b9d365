// Command labelctl проверяет этикетки и предпочтения из терминала тем же бэкендом, что и бот.
package main

func main() {
	Execute()
}
